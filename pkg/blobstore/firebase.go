package blobstore

import (
	"context"
	"fmt"
	"log"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"
)

// FirebaseStore stores images in a Firebase Storage (GCS) bucket and serves
// them through public object URLs.
type FirebaseStore struct {
	bucketName string
	bucket     *gcs.BucketHandle
}

// InitFirebase initializes the Firebase application and returns a store
// backed by its default bucket.
func InitFirebase(ctx context.Context, credentialsPath, bucketName string) (*FirebaseStore, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("storage bucket name not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default storage bucket: %w", err)
	}

	log.Println("Firebase app and storage bucket initialized successfully!")
	return &FirebaseStore{bucketName: bucketName, bucket: bucket}, nil
}

// Store uploads data under a generated key inside folder and makes the
// object publicly readable.
func (s *FirebaseStore) Store(ctx context.Context, data []byte, contentType, folder string) (*Object, error) {
	key := fmt.Sprintf("%s/%s", folder, primitive.NewObjectID().Hex())

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("error writing object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing object %s: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return nil, fmt.Errorf("error publishing object %s: %w", key, err)
	}

	return &Object{
		URL:        fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key),
		StorageKey: key,
	}, nil
}

// Delete removes the object. A missing object is not an error so cascade
// retries stay safe.
func (s *FirebaseStore) Delete(ctx context.Context, storageKey string) error {
	err := s.bucket.Object(storageKey).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return nil
	}
	return err
}

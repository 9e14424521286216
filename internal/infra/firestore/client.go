package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewClient opens a Firestore client for the project. credentialsFile may
// be empty, in which case Application Default Credentials are used.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("NewClient: project ID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewClient: creating firestore client: %w", err)
	}

	return client, nil
}

// Store implements the persistence interfaces of the accounts registry and
// the ingestion service on top of Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore wraps an existing Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

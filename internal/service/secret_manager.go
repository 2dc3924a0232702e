package service

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretResolver reads secret values by name.
type SecretResolver interface {
	AccessSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretManagerResolver struct {
	client    *secretmanager.Client
	projectID string
}

// NewSecretManagerResolver creates a resolver backed by Google Secret Manager.
func NewSecretManagerResolver(ctx context.Context, projectID string, opts ...option.ClientOption) (SecretResolver, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP Project ID is required to read secrets")
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &secretManagerResolver{client: client, projectID: projectID}, nil
}

// AccessSecret returns the latest version of the named secret. name may be a
// short secret ID or a full resource name.
func (s *secretManagerResolver) AccessSecret(ctx context.Context, name string) (string, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(s.projectID, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return string(result.Payload.Data), nil
}

func (s *secretManagerResolver) Close() error {
	return s.client.Close()
}

func secretVersionName(projectID, name string) string {
	if strings.HasPrefix(name, "projects/") {
		if strings.Contains(name, "/versions/") {
			return name
		}
		return name + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
}

//go:build manual

package drive

import (
	"context"
	"os"
	"testing"

	"ee-export/infrastructure/googleauth"
)

// TestRealDriveFolderLookup checks real Google Drive connectivity
// Run with: go test -tags=manual -v ./infrastructure/drive/... -run TestRealDriveFolderLookup
func TestRealDriveFolderLookup(t *testing.T) {
	credentialsPath := "../../credentials.json"
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		t.Skip("credentials.json not found - skipping real Drive test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, googleauth.Credentials{
		CredentialsFile: credentialsPath,
		TokenFile:       "../../token.json",
	})
	if err != nil {
		t.Fatalf("Failed to create Drive client: %v", err)
	}

	exists, err := client.FolderExists(ctx, "ee-exports")
	if err != nil {
		t.Fatalf("Failed to search folders: %v", err)
	}
	t.Logf("folder ee-exports exists: %v", exists)
}

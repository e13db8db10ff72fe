package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
)

// UploadDocument sends the file at path to the document store for use by
// assistants and returns the remote file ID.
func UploadDocument(ctx context.Context, client openai.Client, path string) (string, error) {
	if path == "" {
		return "", errors.New("document path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	file, err := client.Files.New(ctx, openai.FileNewParams{
		File:    f,
		Purpose: openai.FilePurposeAssistants,
	})
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	if file.ID == "" {
		return "", errors.New("upload document: empty file id")
	}
	return file.ID, nil
}

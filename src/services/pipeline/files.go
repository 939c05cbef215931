package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Attachment is one resolved uploaded file, ready to attach to an email.
type Attachment struct {
	FileName  string
	LocalPath string
}

// FileStore resolves the upload token submitted in a file field to a local
// file. Resolution failures degrade the attachment, never the submission.
type FileStore interface {
	Materialize(ctx context.Context, token string) (Attachment, error)
}

// LocalFileStore serves uploads staged in a single directory, keyed by file
// name. Tokens are flattened to their base name so they cannot traverse out.
type LocalFileStore struct {
	Dir string
}

func (s *LocalFileStore) Materialize(ctx context.Context, token string) (Attachment, error) {
	name := filepath.Base(strings.TrimSpace(token))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return Attachment{}, fmt.Errorf("invalid upload token %q", token)
	}

	path := filepath.Join(s.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return Attachment{}, err
	}
	return Attachment{FileName: name, LocalPath: path}, nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.()\[\]-]+`)

// SafeFileName reduces a user-supplied file name to a safe display name for
// email attachments.
func SafeFileName(name string) string {
	safe := unsafeNameChars.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, "._-")
	if safe == "" {
		return "attachment"
	}
	return safe
}

// resolveFiles materializes every file field's upload. Missing or broken
// uploads are logged and skipped.
func (p *Pipeline) resolveFiles(ctx context.Context, run *runState) map[string]Attachment {
	attachments := map[string]Attachment{}
	if !run.form.HasFileField() {
		return attachments
	}

	for i := range run.form.Fields {
		f := &run.form.Fields[i]
		if !f.IsFile() {
			continue
		}
		token, _ := run.data[f.Code].(string)
		if token == "" {
			continue
		}
		if p.Files == nil {
			log.Println("⚠️ No file store configured. Dropping upload for field:", f.Code)
			continue
		}

		att, err := p.Files.Materialize(ctx, token)
		if err != nil {
			log.Println("⚠️ Failed to resolve upload for field", f.Code, ":", err)
			continue
		}
		att.FileName = SafeFileName(att.FileName)
		attachments[f.Code] = att
	}
	return attachments
}

package storage

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// DefaultAvatar is the photo filename assigned to employees with no upload.
const DefaultAvatar = "default-avatar.png"

// avatarMaxWidth bounds stored photos; larger uploads are downscaled.
const avatarMaxWidth = 256

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// Photos manages the uploaded-images directory.
type Photos struct {
	Dir string
}

func NewPhotos(dir string) (*Photos, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	p := &Photos{Dir: dir}
	if err := p.ensurePlaceholder(); err != nil {
		return nil, err
	}
	return p, nil
}

// ensurePlaceholder writes the default avatar if the directory lacks one, so
// employees without an upload always resolve to a servable image.
func (p *Photos) ensurePlaceholder() error {
	path := filepath.Join(p.Dir, DefaultAvatar)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	img := imaging.New(avatarMaxWidth, avatarMaxWidth, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff})
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("write placeholder avatar: %w", err)
	}
	return nil
}

// Save stores an uploaded photo under a unique key and returns the stored
// filename. Keys embed the sanitized original name for readability but are
// made unique with a uuid, so a later upload with the same name can never
// clobber an earlier one.
func (p *Photos) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	name := uniqueName(fh.Filename)
	path := filepath.Join(p.Dir, name)

	// Decodable images are downscaled to the avatar bound; anything else is
	// stored verbatim.
	if img, err := imaging.Decode(bytes.NewReader(buf.Bytes())); err == nil {
		if img.Bounds().Dx() > avatarMaxWidth {
			img = imaging.Resize(img, avatarMaxWidth, 0, imaging.Lanczos)
		}
		if err := imaging.Save(img, path); err == nil {
			return name, nil
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}

func sanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}

func uniqueName(original string) string {
	return fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102"), uuid.New().String(), sanitizeFilename(original))
}

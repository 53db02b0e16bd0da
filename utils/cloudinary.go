package utils

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/lounyevents/event-calendar-go/calendar"
)

const maxPosterBytes = 10 << 20 // 10 MB

func getCloudinaryInstance() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// PosterUpload is the result of storing a poster: the public download URL of
// the original plus the storage keys of both variants.
type PosterUpload struct {
	URL         string
	Path        string
	ResizedPath string
}

// UploadPoster validates and stores an event poster under a fresh
// posters/<uuid>_<name> key and requests an eager 750x1080 webp variant at
// the derived resized key. The caller persists all three values on the
// record.
func UploadPoster(file multipart.File, fileHeader *multipart.FileHeader) (*PosterUpload, error) {
	if fileHeader.Size > maxPosterBytes {
		return nil, fmt.Errorf("poster too large: %d bytes", fileHeader.Size)
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("poster must be an image, got %s", ct)
	}

	cld, err := getCloudinaryInstance()
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	name := strings.TrimSuffix(fileHeader.Filename, path.Ext(fileHeader.Filename))
	publicID := fmt.Sprintf("%s_%s", uuid.NewString(), name)

	uploadResp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "posters",
		PublicID: publicID,
		Eager:    "c_limit,w_750,h_1080,f_webp",
	})
	if err != nil {
		return nil, fmt.Errorf("upload error: %v", err)
	}

	storedPath := "posters/" + publicID
	return &PosterUpload{
		URL:         uploadResp.SecureURL,
		Path:        storedPath,
		ResizedPath: calendar.ResizedImagePath(storedPath),
	}, nil
}

// DeletePoster removes both stored poster variants. Failures are logged and
// swallowed: orphaned blobs are tolerated, a blocked record operation is
// not.
func DeletePoster(posterPath string) {
	if posterPath == "" {
		return
	}

	cld, err := getCloudinaryInstance()
	if err != nil {
		log.Printf("cloudinary config error: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, p := range []string{posterPath, calendar.ResizedImagePath(posterPath)} {
		publicID := strings.TrimSuffix(p, path.Ext(p))
		if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
			log.Printf("could not delete poster %s: %v", p, err)
		}
	}
}

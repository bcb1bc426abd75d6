package mirror

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/djcass44/apt-mirror/pkg/debian"
	"github.com/go-logr/logr"
)

const (
	FileInRelease  = "InRelease"
	FileRelease    = "Release"
	FileReleaseGPG = "Release.gpg"
)

// ErrMissingRelease means that no release manifest could be obtained,
// so there is nothing to resolve package indices against.
var ErrMissingRelease = errors.New("no release manifest could be downloaded")

var manifestFiles = []string{FileInRelease, FileRelease, FileReleaseGPG}

// fetchManifests downloads the release manifest and its signatures.
// Every file that could be downloaded is also written to the sink.
func (m *Mirror) fetchManifests(ctx context.Context) map[string][]byte {
	log := logr.FromContextOrDiscard(ctx)
	files := map[string][]byte{}
	for _, name := range manifestFiles {
		resp, err := m.fetcher.Fetch(ctx, name)
		if err != nil {
			log.Error(err, "failed to download manifest", "file", name)
			continue
		}
		if !resp.OK() {
			log.Error(fmt.Errorf("http response failed with code: %d", resp.StatusCode), "failed to download manifest", "file", name)
			continue
		}
		if err := m.sink.Put(ctx, name, resp.Body); err != nil {
			log.Error(err, "failed to cache manifest", "file", name)
		}
		log.Info("downloaded manifest", "file", name)
		files[name] = resp.Body
	}
	return files
}

// selectManifest returns the text the hash index is read from. Release
// is preferred; failing that the body of InRelease is used.
//
// The InRelease signature is not verified.
func selectManifest(ctx context.Context, files map[string][]byte) (string, error) {
	log := logr.FromContextOrDiscard(ctx)
	if data, ok := files[FileRelease]; ok {
		if !utf8.Valid(data) {
			return "", &debian.ManifestError{Reason: "Release is not valid UTF-8"}
		}
		return string(data), nil
	}
	data, ok := files[FileInRelease]
	if !ok {
		return "", ErrMissingRelease
	}
	log.Info("Release is unavailable, reading the unverified body of InRelease")
	block, _ := clearsign.Decode(data)
	if block == nil {
		return "", fmt.Errorf("%w: InRelease is not a clearsigned message", ErrMissingRelease)
	}
	if !utf8.Valid(block.Plaintext) {
		return "", &debian.ManifestError{Reason: "InRelease is not valid UTF-8"}
	}
	return string(block.Plaintext), nil
}

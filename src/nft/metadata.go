package nft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CalebEverett/arloader/src/manifest"
)

var ErrManifestNotFound = errors.New("manifest companion file not found")
var ErrPathNotInManifest = errors.New("asset path missing from manifest")

// ManifestId recovers the transaction id out of a manifest_<txid>.json
// companion path.
func ManifestId(manifestPath string) string {
	stem := strings.TrimSuffix(filepath.Base(manifestPath), filepath.Ext(manifestPath))
	return strings.TrimPrefix(stem, "manifest_")
}

// UpdateMetadata patches the metadata JSON of every asset path: the image
// field gets the uploaded uri, properties.files gets the id-based and
// path-based entries from the manifest companion. With linkFile the image
// points at the path-based uri.
func UpdateMetadata(assetPaths []string, manifestPath, baseUrl string, linkFile bool) (err error) {
	if _, err = os.Stat(manifestPath); err != nil {
		return ErrManifestNotFound
	}

	companion, err := manifest.ReadCompanion(manifestPath)
	if err != nil {
		return
	}
	manifestId := ManifestId(manifestPath)

	for _, assetPath := range assetPaths {
		entry, ok := companion[assetPath]
		if !ok {
			return fmt.Errorf("%w: %s", ErrPathNotInManifest, assetPath)
		}

		imageLink := fmt.Sprintf("%s/%s", baseUrl, entry.Id)
		if linkFile {
			imageLink = fmt.Sprintf("%s/%s/%s", baseUrl, manifestId, assetPath)
		}

		metadataPath := strings.TrimSuffix(assetPath, filepath.Ext(assetPath)) + ".json"
		err = updateMetadataFile(metadataPath, entry.Files, imageLink)
		if err != nil {
			return
		}
	}

	return
}

func updateMetadataFile(path string, files []manifest.CompanionUri, imageLink string) (err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var metadata map[string]json.RawMessage
	err = json.Unmarshal(data, &metadata)
	if err != nil {
		return
	}

	metadata["image"], _ = json.Marshal(imageLink)

	var properties map[string]json.RawMessage
	if raw, ok := metadata["properties"]; ok {
		if err = json.Unmarshal(raw, &properties); err != nil {
			return
		}
	} else {
		properties = make(map[string]json.RawMessage)
	}
	properties["files"], _ = json.Marshal(files)
	metadata["properties"], _ = json.Marshal(properties)

	out, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return
	}

	return os.WriteFile(path, out, 0o644)
}

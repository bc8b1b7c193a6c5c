package nft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/CalebEverett/arloader/src/manifest"
)

// Candy machine item, keyed by index in the items file.
type MetaplexItem struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	OnChain bool   `json:"onChain"`
}

// WriteMetaplexItems reads the name out of every uploaded metadata file
// and writes metaplex_items_<manifest_id>.json into logDir, mapping each
// index to its name and uploaded link.
func WriteMetaplexItems(metadataPaths []string, manifestPath, logDir, baseUrl string, linkFile bool) (out string, err error) {
	if _, err = os.Stat(manifestPath); err != nil {
		err = ErrManifestNotFound
		return
	}

	companion, err := manifest.ReadCompanion(manifestPath)
	if err != nil {
		return
	}
	manifestId := ManifestId(manifestPath)

	items := make(map[string]MetaplexItem, len(metadataPaths))
	for i, path := range metadataPaths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			err = readErr
			return
		}

		entry, ok := companion[path]
		if !ok {
			err = fmt.Errorf("%w: %s", ErrPathNotInManifest, path)
			return
		}

		link := fmt.Sprintf("%s/%s", baseUrl, entry.Id)
		if linkFile {
			link = fmt.Sprintf("%s/%s/%s", baseUrl, manifestId, path)
		}

		items[strconv.Itoa(i)] = MetaplexItem{
			Name: gjson.GetBytes(data, "name").String(),
			Link: link,
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return
	}

	out = filepath.Join(logDir, fmt.Sprintf("metaplex_items_%s.json", manifestId))
	err = os.WriteFile(out, data, 0o644)
	return
}

// MetadataPathsFor pairs asset paths with their sibling .json metadata.
func MetadataPathsFor(assetPaths []string) (out []string) {
	out = make([]string, len(assetPaths))
	for i, path := range assetPaths {
		out[i] = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	}
	return
}

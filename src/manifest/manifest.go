package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/CalebEverett/arloader/src/status"
)

// Arweave path manifest, uploaded on chain so files resolve as
// gateway/<manifest_id>/<path>.
// https://github.com/ArweaveTeam/arweave/wiki/Path-Manifests
type Manifest struct {
	Manifest string               `json:"manifest"`
	Version  string               `json:"version"`
	Index    Index                `json:"index"`
	Paths    map[string]PathEntry `json:"paths"`
}

type Index struct {
	Path string `json:"path"`
}

type PathEntry struct {
	Id string `json:"id"`

	// Kept out of the uploaded form, used by the local companion
	ContentType string `json:"-"`
}

func (self PathEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Id string `json:"id"`
	}{Id: self.Id})
}

// FromRecords merges the file paths of bundle status records into one
// manifest. The index points at the lexicographically first path.
func FromRecords(records []*status.Record) (self *Manifest) {
	self = &Manifest{
		Manifest: "arweave/paths",
		Version:  "0.1.0",
		Paths:    make(map[string]PathEntry),
	}

	for _, record := range records {
		for path, entry := range record.FilePaths {
			self.Paths[filepath.ToSlash(path)] = PathEntry{
				Id:          entry.Id.String(),
				ContentType: entry.ContentType,
			}
		}
	}

	paths := make([]string, 0, len(self.Paths))
	for path := range self.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	if len(paths) > 0 {
		self.Index.Path = paths[0]
	}

	return
}

func (self *Manifest) Marshal() ([]byte, error) {
	return json.Marshal(self)
}

// Local companion written next to the status records, consumed by the NFT
// metadata updater. Maps each path to its id-based and path-based uris.
type CompanionEntry struct {
	Id    string         `json:"id"`
	Files []CompanionUri `json:"files"`
}

type CompanionUri struct {
	Uri  string `json:"uri"`
	Type string `json:"type"`
}

func (self *Manifest) Companion(baseUrl, txId string) map[string]CompanionEntry {
	out := make(map[string]CompanionEntry, len(self.Paths))
	for path, entry := range self.Paths {
		out[path] = CompanionEntry{
			Id: entry.Id,
			Files: []CompanionUri{
				{Uri: fmt.Sprintf("%s/%s", baseUrl, entry.Id), Type: entry.ContentType},
				{Uri: fmt.Sprintf("%s/%s/%s", baseUrl, txId, path), Type: entry.ContentType},
			},
		}
	}
	return out
}

// WriteCompanion writes manifest_<txid>.json into logDir.
func (self *Manifest) WriteCompanion(logDir, baseUrl, txId string) (path string, err error) {
	data, err := json.MarshalIndent(self.Companion(baseUrl, txId), "", "  ")
	if err != nil {
		return
	}

	path = filepath.Join(logDir, fmt.Sprintf("manifest_%s.json", txId))
	err = os.WriteFile(path, data, 0o644)
	return
}

// ReadCompanion loads a previously written companion file.
func ReadCompanion(path string) (out map[string]CompanionEntry, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &out)
	return
}

package status

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/CalebEverett/arloader/src/utils/logger"
)

var ErrNoRecord = errors.New("no status record for id")

// Store keeps one JSON file per transaction id in a directory. Writes go
// through a temp file and a rename so a partially written record is never
// observable.
type Store struct {
	dir string
	log *logrus.Entry
}

func NewStore(dir string) (self *Store, err error) {
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return
	}

	self = new(Store)
	self.dir = dir
	self.log = logger.NewSublogger("status-store")
	return
}

func (self *Store) Dir() string {
	return self.dir
}

// FileStemIsValidTxId reports whether a file stem decodes to a 32-byte id.
func FileStemIsValidTxId(stem string) bool {
	id, err := base64.RawURLEncoding.DecodeString(stem)
	return err == nil && len(id) == 32
}

func (self *Store) path(id string) string {
	return filepath.Join(self.dir, id+".json")
}

func (self *Store) Write(record *Record) (err error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return
	}

	final := self.path(record.Id.String())
	tmp := final + ".tmp"

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return
	}

	_, err = file.Write(data)
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return
	}

	return os.Rename(tmp, final)
}

func (self *Store) Read(id string) (record *Record, err error) {
	data, err := os.ReadFile(self.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrNoRecord
		}
		return
	}

	record = new(Record)
	err = json.Unmarshal(data, record)
	if err != nil {
		record = nil
	}
	return
}

// Scan loads every record in the directory whose file stem is a valid
// transaction id. Files that fail to parse are skipped with a warning,
// never deleted.
func (self *Store) Scan() (records []*Record, err error) {
	entries, err := os.ReadDir(self.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ".json")
		if !FileStemIsValidTxId(stem) {
			continue
		}

		record, readErr := self.Read(stem)
		if readErr != nil {
			self.log.WithError(readErr).WithField("file", entry.Name()).Warn("Skipping unreadable status record")
			continue
		}

		records = append(records, record)
	}

	return
}

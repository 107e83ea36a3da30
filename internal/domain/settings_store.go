package domain

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// SettingsDocument is the settings file: the master-password record at the
// top level and user preferences in the settings block. Keys this package
// does not know are carried through unchanged.
type SettingsDocument struct {
	MasterHash string
	Settings   SettingsBlock

	extra map[string]json.RawMessage
}

type SettingsBlock struct {
	Autofill *string

	extra map[string]json.RawMessage
}

func (d SettingsDocument) MarshalJSON() ([]byte, error) {
	out := copyRaw(d.extra)
	if d.MasterHash != "" {
		if err := putRaw(out, "pwd", d.MasterHash); err != nil {
			return nil, err
		}
	}
	if err := putRaw(out, "settings", d.Settings); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (d *SettingsDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var next SettingsDocument
	if v, ok := raw["pwd"]; ok {
		if err := json.Unmarshal(v, &next.MasterHash); err != nil {
			return err
		}
		delete(raw, "pwd")
	}
	if v, ok := raw["settings"]; ok {
		if err := json.Unmarshal(v, &next.Settings); err != nil {
			return err
		}
		delete(raw, "settings")
	}
	next.extra = raw
	*d = next
	return nil
}

func (b SettingsBlock) MarshalJSON() ([]byte, error) {
	out := copyRaw(b.extra)
	if b.Autofill != nil {
		if err := putRaw(out, "autofill", *b.Autofill); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

func (b *SettingsBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var next SettingsBlock
	if v, ok := raw["autofill"]; ok {
		if err := json.Unmarshal(v, &next.Autofill); err != nil {
			return err
		}
		delete(raw, "autofill")
	}
	next.extra = raw
	*b = next
	return nil
}

func copyRaw(in map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(in)+2)
	for k, v := range in {
		out[k] = v
	}
	return out
}

func putRaw(m map[string]json.RawMessage, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m[key] = b
	return nil
}

type SettingsStore struct {
	doc *jsonDocument[SettingsDocument]
	log zerolog.Logger
}

func NewSettingsStore(path string, opts ...StoreOption) *SettingsStore {
	o := buildStoreOptions(opts)
	return &SettingsStore{
		doc: newJSONDocument(path, func() SettingsDocument { return SettingsDocument{} }, o),
		log: o.log,
	}
}

func (s *SettingsStore) Path() string {
	return s.doc.path
}

// Status reports how the settings file currently reads.
func (s *SettingsStore) Status() ReadStatus {
	_, status, _ := s.doc.load()
	return status
}

// GetAutofill returns the default username, if one has been set.
func (s *SettingsStore) GetAutofill() (string, bool) {
	doc, _ := s.doc.read()
	if doc.Settings.Autofill == nil {
		return "", false
	}
	return *doc.Settings.Autofill, true
}

func (s *SettingsStore) SetAutofill(username string) error {
	if strings.TrimSpace(username) == "" {
		return validationError("set autofill", "username must not be empty")
	}
	return s.doc.update(func(doc *SettingsDocument) (bool, error) {
		doc.Settings.Autofill = &username
		return true, nil
	})
}

func (s *SettingsStore) MasterHash() (string, bool) {
	doc, _ := s.doc.read()
	if doc.MasterHash == "" {
		return "", false
	}
	return doc.MasterHash, true
}

func (s *SettingsStore) SetMasterHash(record string) error {
	if record == "" {
		return validationError("set master hash", "record must not be empty")
	}
	return s.doc.update(func(doc *SettingsDocument) (bool, error) {
		doc.MasterHash = record
		return true, nil
	})
}

package metadata

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Version is the metadata schema version this client reads and writes.
const Version = 0

// ErrInvalid marks metadata documents or fields that failed validation.
// Callers classify validation failures with errors.Is.
var ErrInvalid = errors.New("invalid metadata")

var (
	whereRe  = regexp.MustCompile(`^[a-z0-9_.-]+$`)
	whatRe   = regexp.MustCompile(`^[a-z0-9_-]+$`)
	workIDRe = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Metadata is the complete provenance record for one archived file. Field
// order is the canonical serialization order.
type Metadata struct {
	Version int     `json:"version"`
	Start   int64   `json:"start"`
	End     *int64  `json:"end"`
	Where   string  `json:"where"`
	What    string  `json:"what"`
	WorkID  *string `json:"work_id"`
	ID      string  `json:"id"`
	Path    string  `json:"path"`
	Hash    string  `json:"hash"`
}

// Fields carries caller-supplied values for constructing Metadata. Nil or
// empty members are treated as unset; Path and Hash are normally filled in
// by the file layer rather than end users.
type Fields struct {
	Start  *int64
	End    *int64
	Where  string
	What   string
	WorkID string
	ID     string
	Path   string
	Hash   string
}

// New builds a validated Metadata from fields, generating a fresh id when
// the caller does not supply one. Start and end are milliseconds since the
// Unix epoch.
func New(f Fields) (Metadata, error) {
	m := Metadata{
		Version: Version,
		End:     f.End,
		Where:   strings.TrimSpace(f.Where),
		What:    strings.TrimSpace(f.What),
		ID:      strings.TrimSpace(f.ID),
		Path:    f.Path,
		Hash:    strings.TrimSpace(f.Hash),
	}
	if f.Start != nil {
		m.Start = *f.Start
	} else {
		return Metadata{}, fieldErr("start", "required")
	}
	if workID := strings.TrimSpace(f.WorkID); workID != "" {
		m.WorkID = &workID
	}
	if m.ID == "" {
		m.ID = NewID()
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// NewID returns a fresh random metadata id: 32 lowercase hex characters.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// FromJSON decodes a serialized metadata document and validates it.
func FromJSON(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// JSON returns the canonical serialized form of the document.
func (m Metadata) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

// Validate checks every field against the schema rules. The returned error
// wraps ErrInvalid and names the offending field.
func (m Metadata) Validate() error {
	if m.Version != Version {
		return fieldErr("version", fmt.Sprintf("unsupported version %d", m.Version))
	}
	if m.Start < 0 {
		return fieldErr("start", "must not be negative")
	}
	if m.End != nil && *m.End < m.Start {
		return fieldErr("end", "precedes start")
	}
	if m.Where == "" {
		return fieldErr("where", "required")
	}
	if !whereRe.MatchString(m.Where) {
		return fieldErr("where", "must match "+whereRe.String())
	}
	if m.What == "" {
		return fieldErr("what", "required")
	}
	if !whatRe.MatchString(m.What) {
		return fieldErr("what", "must match "+whatRe.String())
	}
	if m.WorkID != nil {
		if *m.WorkID == "null" {
			return fieldErr("work_id", `the literal string "null" is reserved`)
		}
		if !workIDRe.MatchString(*m.WorkID) {
			return fieldErr("work_id", "must match "+workIDRe.String())
		}
	}
	if err := ValidateID(m.ID); err != nil {
		return err
	}
	if m.Path == "" {
		return fieldErr("path", "required")
	}
	if !filepath.IsAbs(m.Path) {
		return fieldErr("path", "must be absolute")
	}
	if m.Hash == "" {
		return fieldErr("hash", "required")
	}
	return nil
}

// ValidateID checks that an id is usable as an opaque unique name. Ids name
// queue entries directly, so anything that cannot be a plain directory entry
// is rejected, as is the dot prefix reserved for queue bookkeeping.
func ValidateID(id string) error {
	if id == "" {
		return fieldErr("id", "required")
	}
	if strings.HasPrefix(id, ".") {
		return fieldErr("id", "must not begin with '.'")
	}
	if strings.ContainsAny(id, "/\x00") || strings.ContainsRune(id, filepath.Separator) {
		return fieldErr("id", "must not contain path separators")
	}
	return nil
}

func fieldErr(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, field, reason)
}

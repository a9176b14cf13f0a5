package audit

import "time"

// Entry is one append-only audit record. Field names follow the persisted
// JSONL layout; existing trails must keep decoding.
type Entry struct {
	Action      string        `json:"action"`
	Client      string        `json:"client,omitempty"`
	Signature   string        `json:"signature"`
	Target      string        `json:"target,omitempty"`
	Types       []string      `json:"types"`
	CoercedArgs []interface{} `json:"coerced_args"`
	Data        string        `json:"data"`
	OpID        string        `json:"opId,omitempty"`
	SaltUsed    string        `json:"salt_used,omitempty"`
	Signed      bool          `json:"signed"`
	SignerKid   string        `json:"signer_kid,omitempty"`
	TS          string        `json:"ts"`
}

// ListItem describes one stored record. S3-backed listings populate
// Key/Size/LastModified, local listings Index/Preview.
type ListItem struct {
	Key          string
	Size         int64
	LastModified time.Time
	Index        int64
	Preview      string
}

// Config parameterizes the audit trail writer.
type Config struct {
	LocalPath       string
	S3Bucket        string
	S3Prefix        string
	S3SSE           string
	S3ObjectLock    bool
	S3RetentionDays int
	S3UploadTimeout time.Duration
}

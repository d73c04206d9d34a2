package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInput is returned when a repository owner or name is blank.
var ErrMissingInput = errors.New("both owner and repo are required")

// RepositoryRef identifies a GitHub repository.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"repo"`
}

func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r RepositoryRef) Validate() error {
	if strings.TrimSpace(r.Owner) == "" || strings.TrimSpace(r.Name) == "" {
		return ErrMissingInput
	}
	return nil
}

// ParseRef splits "owner/name" into a RepositoryRef.
func ParseRef(s string) (RepositoryRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	ref := RepositoryRef{Owner: owner, Name: name}
	if !ok || strings.Contains(name, "/") {
		return ref, fmt.Errorf("invalid repository %q, want owner/repo", s)
	}
	return ref, ref.Validate()
}

// FileRecord is one fetched file.
type FileRecord struct {
	Path    string
	Content string
}

func (f FileRecord) Block() string {
	return "# File: " + f.Path + "\n" + f.Content
}

// ContentBundle is the collected repository text handed to the requester.
type ContentBundle struct {
	Repo   RepositoryRef
	Text   string
	Files  []FileRecord
	Status Status
	Err    error
}

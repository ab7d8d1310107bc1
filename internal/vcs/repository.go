package vcs

import (
	"strings"

	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
)

// Repository identifies a hosted repository as owner/name. Owner may contain
// several segments for providers with nested groups.
type Repository struct {
	Owner string
	Name  string
}

// FullName returns the owner/name form.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses an owner/name identifier. A leading scheme and host
// and a trailing .git are tolerated so clone URLs can be pasted as is.
func ParseRepository(id string) (Repository, error) {
	raw := strings.TrimSpace(id)
	s := raw
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			s = s[j+1:]
		} else {
			s = ""
		}
	}
	s = strings.TrimSuffix(strings.Trim(s, "/"), ".git")

	segments := strings.Split(s, "/")
	if len(segments) < 2 {
		return Repository{}, domainErrors.ErrInvalidRepository.WithContext("repository", raw)
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return Repository{}, domainErrors.ErrInvalidRepository.WithContext("repository", raw)
		}
	}

	return Repository{
		Owner: strings.Join(segments[:len(segments)-1], "/"),
		Name:  segments[len(segments)-1],
	}, nil
}

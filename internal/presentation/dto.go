package presentation

import (
	"github.com/zjrosen/sdktable/internal/sdk"
)

// SdkDTO represents an SDK for presentation
type SdkDTO struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Home       string            `json:"home"`
	Version    string            `json:"version,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Internal   bool              `json:"internal,omitempty"` // the bundled entity, not a table member
	Derived    bool              `json:"derived,omitempty"`  // resolved from a hint, not a table member
}

// Origin says where a presented SDK came from.
type Origin int

const (
	OriginTable Origin = iota
	OriginInternal
	OriginDerived
)

// FromDomain converts a domain SDK to a DTO.
func FromDomain(s *sdk.Sdk, origin Origin) SdkDTO {
	attrs := s.Attributes()
	if len(attrs) == 0 {
		attrs = nil
	}
	return SdkDTO{
		Name:       s.Name(),
		Type:       s.TypeName(),
		Home:       s.HomePath(),
		Version:    s.Version(),
		Attributes: attrs,
		Internal:   origin == OriginInternal,
		Derived:    origin == OriginDerived,
	}
}

// FromDomainList converts table members to DTOs, preserving order.
func FromDomainList(sdks []*sdk.Sdk) []SdkDTO {
	dtos := make([]SdkDTO, len(sdks))
	for i, s := range sdks {
		dtos[i] = FromDomain(s, OriginTable)
	}
	return dtos
}

// Package gateway holds the types shared by every bank backend: backend
// identity, the outbound artifact, the normalized notification record and the
// error taxonomy.
package gateway

import (
	"fmt"
	"strings"
)

// Kind identifies a bank backend
type Kind string

const (
	KindSIPS        Kind = "sips"
	KindSystemPayV1 Kind = "systempayv1"
	KindSystemPayV2 Kind = "systempayv2"
	KindSPPlus      Kind = "spplus"
	KindDummy       Kind = "dummy"
)

// Kinds lists every supported backend
var Kinds = []Kind{KindSIPS, KindSystemPayV1, KindSystemPayV2, KindSPPlus, KindDummy}

// ParseKind resolves a backend name. "systempay" is an alias of systempayv2.
func ParseKind(raw string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "systempay" {
		return KindSystemPayV2, nil
	}
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown payment backend %q", raw)
}

func (k Kind) String() string {
	return string(k)
}

// ArtifactKind tells the caller how to present a request artifact
type ArtifactKind int

const (
	// ArtifactURL is a redirect URL for the customer browser
	ArtifactURL ArtifactKind = 1
	// ArtifactHTML is form markup to embed in a page
	ArtifactHTML ArtifactKind = 2
)

func (k ArtifactKind) String() string {
	switch k {
	case ArtifactURL:
		return "url"
	case ArtifactHTML:
		return "html"
	default:
		return "unknown"
	}
}

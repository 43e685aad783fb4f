package petrifile

import (
	"context"
	"io"

	"github.com/jt05610/statespace"
)

type Service interface {
	Load(ctx context.Context, r io.Reader) (*petri.Net, error)
	Save(ctx context.Context, w io.Writer, n *petri.Net) error
	Version() Version
}

type Version string

const (
	V1 Version = "v1"
)

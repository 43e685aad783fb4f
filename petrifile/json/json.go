package json

import (
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/jt05610/statespace"
	pf "github.com/jt05610/statespace/petrifile"
)

var _ pf.Service = (*Service)(nil)

// Service reads and writes net definitions as JSON, the layout the
// definition's field names come from.
type Service struct {
	Logger *zap.Logger
}

func (s *Service) Load(_ context.Context, r io.Reader) (*petri.Net, error) {
	var def pf.Definition
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}
	var opts []petri.Option
	if s.Logger != nil {
		opts = append(opts, petri.WithLogger(s.Logger))
	}
	return def.Net(opts...)
}

func (s *Service) Save(_ context.Context, w io.Writer, n *petri.Net) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pf.FromNet(n))
}

func (s *Service) Version() pf.Version {
	return pf.V1
}

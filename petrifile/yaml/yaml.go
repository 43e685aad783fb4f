package yaml

import (
	"context"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jt05610/statespace"
	pf "github.com/jt05610/statespace/petrifile"
)

var _ pf.Service = (*Service)(nil)

// Service reads and writes net definitions as YAML.
type Service struct {
	Logger *zap.Logger
}

func (s *Service) Load(_ context.Context, r io.Reader) (*petri.Net, error) {
	var def pf.Definition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, err
	}
	var opts []petri.Option
	if s.Logger != nil {
		opts = append(opts, petri.WithLogger(s.Logger))
	}
	return def.Net(opts...)
}

func (s *Service) Save(_ context.Context, w io.Writer, n *petri.Net) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pf.FromNet(n)); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Service) Version() pf.Version {
	return pf.V1
}

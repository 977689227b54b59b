// Package srvenv carries the immutable process-wide dependencies. The
// environment is assembled once during setup and only read afterwards.
package srvenv

import (
	"congest/internal/classifier"
	"congest/internal/encoder"
	"congest/internal/feature"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	classifier classifier.Classifier
	encoders   *encoder.Set
	assembler  *feature.Assembler
}

func (s *SrvEnv) Classifier() classifier.Classifier {
	return s.classifier
}

func (s *SrvEnv) Encoders() *encoder.Set {
	return s.encoders
}

func (s *SrvEnv) Assembler() *feature.Assembler {
	return s.assembler
}

// ModelLoaded reports whether setup produced a usable model environment.
func (s *SrvEnv) ModelLoaded() bool {
	return s != nil && s.classifier != nil && s.encoders != nil
}

func WithClassifier(c classifier.Classifier) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.classifier = c
		return s
	}
}

func WithEncoders(set *encoder.Set) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.encoders = set
		return s
	}
}

func WithAssembler(a *feature.Assembler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.assembler = a
		return s
	}
}

// Package persistence stores the description of a systematic code: a
// structured record plus the decode and encode text listings.
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nathanhack/sysldpc/bipartite"
	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrPersistence = errors.New("persistence failure")

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrPersistence, s)
}

// Record is the stored form of a code.
type Record struct {
	Message  int     `json:"message" yaml:"message"`
	Parity   int     `json:"parity" yaml:"parity"`
	Codeword int     `json:"codeword" yaml:"codeword"`
	Repaired int     `json:"repaired" yaml:"repaired"`
	Parities [][]int `json:"parities" yaml:"parities"`
	Symbols  [][]int `json:"symbols" yaml:"symbols"`
	Encode   [][]int `json:"encode" yaml:"encode"`
}

func NewRecord(code *linearblock.Systematic) *Record {
	inc := code.Incidence()
	return &Record{
		Message:  code.MessageLength(),
		Parity:   code.ParitySymbols(),
		Codeword: code.CodewordLength(),
		Repaired: code.Repaired(),
		Parities: inc.Parities,
		Symbols:  inc.Symbols,
		Encode:   inc.Encode,
	}
}

// Incidence returns the incidence lists held by the record.
func (r *Record) Incidence() *linearblock.Incidence {
	return &linearblock.Incidence{
		Parities: r.Parities,
		Symbols:  r.Symbols,
		Encode:   r.Encode,
	}
}

// Check reports whether the record is internally consistent.
func (r *Record) Check() error {
	switch {
	case r.Message+r.Parity != r.Codeword:
		return fmt.Errorf("%w: message %v + parity %v != codeword %v", ErrPersistence, r.Message, r.Parity, r.Codeword)
	case len(r.Encode) != r.Parity:
		return fmt.Errorf("%w: %v encode rows for %v parities", ErrPersistence, len(r.Encode), r.Parity)
	case len(r.Parities) != r.Parity+r.Repaired:
		return fmt.Errorf("%w: %v decode rows for %v parities and %v repairs", ErrPersistence, len(r.Parities), r.Parity, r.Repaired)
	case len(r.Symbols) != r.Codeword:
		return fmt.Errorf("%w: %v symbol lists for codeword %v", ErrPersistence, len(r.Symbols), r.Codeword)
	case !r.Incidence().Symmetric():
		return fmt.Errorf("%w: parity and symbol lists disagree", ErrPersistence)
	}
	return nil
}

// Paths are the files written for one code.
type Paths struct {
	Record string
	Decode string
	Encode string
}

// PathsFor returns the file names used for a code with k message symbols.
func PathsFor(dir string, k int, format Format) Paths {
	return Paths{
		Record: filepath.Join(dir, fmt.Sprintf("symbols_and_parities_k=%v.%v", k, format)),
		Decode: filepath.Join(dir, fmt.Sprintf("k=%v_decode.txt", k)),
		Encode: filepath.Join(dir, fmt.Sprintf("k=%v_encode.txt", k)),
	}
}

// saveLocks holds one mutex per decode listing so concurrent saves of codes
// with the same message length replace the three files as a unit.
var saveLocks sync.Map

func lockFor(paths Paths) *sync.Mutex {
	key := paths.Decode
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	m, _ := saveLocks.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// Save writes the record and both text listings into dir, replacing any
// files of a previous code with the same message length. Saves into the same
// files are serialized.
func Save(dir string, record *Record, format Format) (Paths, error) {
	paths := PathsFor(dir, record.Message, format)
	lock := lockFor(paths)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return paths, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var bs []byte
	var err error
	switch format {
	case JSON:
		bs, err = json.Marshal(record)
	case YAML:
		bs, err = yaml.Marshal(record)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return paths, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := write(paths.Record, bs); err != nil {
		return paths, err
	}
	logrus.Debugf("saved %v", paths.Record)

	for path, rows := range map[string][][]int{paths.Decode: record.Parities, paths.Encode: record.Encode} {
		buf := bytes.Buffer{}
		if err := bipartite.WriteRows(&buf, rows); err != nil {
			return paths, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if err := write(path, buf.Bytes()); err != nil {
			return paths, err
		}
		logrus.Debugf("saved %v", path)
	}
	return paths, nil
}

func write(path string, bs []byte) error {
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Load reads a record, choosing the decoder from the file extension.
func Load(path string) (*Record, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	record := Record{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bs, &record)
	default:
		err = json.Unmarshal(bs, &record)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrPersistence, path, err)
	}
	return &record, nil
}

package deps

import (
	"encoding/binary"
	"os"
	"strconv"
	"sync"
)

// Environment variables naming the inherited file descriptors for sending
// dependency records to a parent build system.
const (
	InputsEnv  = "GIRDER_INPUTS"
	OutputsEnv = "GIRDER_OUTPUTS"
)

// recordHeaderSize is the fixed portion of a dependency record: a uint32
// status, a 32-byte checksum, and a uint32 name length, all little-endian.
const recordHeaderSize = 4 + 32 + 4

// Pipe streams dependency records to a parent build system over file
// descriptors inherited at process start. A record carries an unknown status
// and a zero checksum; the parent computes checksums itself when needed.
type Pipe struct {
	mu      sync.Mutex
	inputs  *os.File
	outputs *os.File
}

// FromEnv opens a Pipe from the GIRDER_INPUTS and GIRDER_OUTPUTS environment
// variables. It returns nil when neither is set, meaning no parent build
// system is listening.
func FromEnv() *Pipe {
	inputs := fileFromEnv(InputsEnv)
	outputs := fileFromEnv(OutputsEnv)
	if inputs == nil && outputs == nil {
		return nil
	}
	return NewPipe(inputs, outputs)
}

// NewPipe creates a Pipe writing input and output records to the given
// files. Either file may be nil, in which case records for that side are
// dropped.
func NewPipe(inputs, outputs *os.File) *Pipe {
	return &Pipe{inputs: inputs, outputs: outputs}
}

// fileFromEnv converts an environment variable holding a file descriptor
// number into an open file. Unset, empty, or non-numeric values yield nil.
func fileFromEnv(name string) *os.File {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	fd, err := strconv.Atoi(v)
	if err != nil || fd <= 0 {
		return nil
	}
	return os.NewFile(uintptr(fd), name)
}

// AddInput reports a directory or file that was read.
func (p *Pipe) AddInput(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.write(p.inputs, path)
}

// AddOutput reports a file that was produced.
func (p *Pipe) AddOutput(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.write(p.outputs, path)
}

// Close closes both descriptors, flushing nothing since writes are unbuffered.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.inputs != nil {
		err = p.inputs.Close()
		p.inputs = nil
	}
	if p.outputs != nil {
		if cerr := p.outputs.Close(); err == nil {
			err = cerr
		}
		p.outputs = nil
	}
	return err
}

// write serializes one record and writes it in a single call so records from
// concurrent goroutines never interleave. Callers hold p.mu.
func (p *Pipe) write(f *os.File, name string) {
	if f == nil {
		return
	}

	buf := make([]byte, recordHeaderSize+len(name))
	// Status 0 (unknown) and a zero checksum; only the name is filled in.
	binary.LittleEndian.PutUint32(buf[36:40], uint32(len(name)))
	copy(buf[recordHeaderSize:], name)

	// A broken pipe means the parent went away; dependency reporting is
	// best effort, so the error is dropped.
	f.Write(buf)
}

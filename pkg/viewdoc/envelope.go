package viewdoc

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Envelope layout, little endian:
//
//	magic[16] version[2] flags[2] salt[16] nonce[12] payloadLen[8] payload
const (
	envelopeMagic     = "HEXVIEW_ENVELOPE"
	envelopeVersionV1 = uint16(1)
	envFlagCompressed = uint16(1 << 0)
	envFlagEncrypted  = uint16(1 << 1)
	envSaltSize       = 16
	envNonceSize      = 12
	envHeaderSize     = len(envelopeMagic) + 2 + 2 + envSaltSize + envNonceSize + 8
	kdfIterations     = 200000
)

type EnvelopeInfo struct {
	Wrapped    bool
	Compressed bool
	Encrypted  bool
	Version    uint16
}

type envelopeHeader struct {
	version    uint16
	flags      uint16
	salt       [envSaltSize]byte
	nonce      [envNonceSize]byte
	payloadLen uint64
}

func (h envelopeHeader) info() EnvelopeInfo {
	return EnvelopeInfo{
		Wrapped:    true,
		Compressed: h.flags&envFlagCompressed != 0,
		Encrypted:  h.flags&envFlagEncrypted != 0,
		Version:    h.version,
	}
}

func (h envelopeHeader) appendTo(out []byte) []byte {
	out = append(out, envelopeMagic...)
	out = binary.LittleEndian.AppendUint16(out, h.version)
	out = binary.LittleEndian.AppendUint16(out, h.flags)
	out = append(out, h.salt[:]...)
	out = append(out, h.nonce[:]...)
	return binary.LittleEndian.AppendUint64(out, h.payloadLen)
}

// parseEnvelopeHeader reads the fixed header of an envelope; b must start
// with the magic.
func parseEnvelopeHeader(b []byte) (envelopeHeader, error) {
	var h envelopeHeader
	if len(b) < envHeaderSize {
		return h, ErrInvalidEnvelope
	}
	rest := b[len(envelopeMagic):]
	h.version = binary.LittleEndian.Uint16(rest)
	if h.version != envelopeVersionV1 {
		return h, fmt.Errorf("%w: envelope version %d", ErrUnsupportedVersion, h.version)
	}
	h.flags = binary.LittleEndian.Uint16(rest[2:])
	rest = rest[4:]
	rest = rest[copy(h.salt[:], rest):]
	rest = rest[copy(h.nonce[:], rest):]
	h.payloadLen = binary.LittleEndian.Uint64(rest)
	return h, nil
}

// InspectEnvelope reports how the file at path is wrapped without decoding
// the document, so a caller can ask for a password first.
func InspectEnvelope(path string) (EnvelopeInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	if !isEnvelope(b) {
		return EnvelopeInfo{}, nil
	}
	h, err := parseEnvelopeHeader(b)
	if err != nil {
		return EnvelopeInfo{}, err
	}
	return h.info(), nil
}

func isEnvelope(b []byte) bool {
	return bytes.HasPrefix(b, []byte(envelopeMagic))
}

// wrapEnvelope deflates the encoded document when asked, then seals it with
// a password-derived AES-GCM key.
func wrapEnvelope(doc []byte, opts SaveOptions) ([]byte, error) {
	h := envelopeHeader{version: envelopeVersionV1}
	payload := doc
	if opts.Compression {
		h.flags |= envFlagCompressed
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(doc); err != nil {
			zw.Close()
			return nil, fmt.Errorf("deflate views: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("deflate views: %w", err)
		}
		payload = buf.Bytes()
	}

	if opts.Encryption.Enabled {
		h.flags |= envFlagEncrypted
		if _, err := io.ReadFull(rand.Reader, h.salt[:]); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(rand.Reader, h.nonce[:]); err != nil {
			return nil, err
		}
		aead, err := viewKey(opts.Encryption.Password, h.salt[:])
		if err != nil {
			return nil, err
		}
		payload = aead.Seal(nil, h.nonce[:], payload, nil)
	}

	h.payloadLen = uint64(len(payload))
	out := h.appendTo(make([]byte, 0, envHeaderSize+len(payload)))
	return append(out, payload...), nil
}

func unwrapEnvelope(b []byte, opts LoadOptions) ([]byte, error) {
	h, err := parseEnvelopeHeader(b)
	if err != nil {
		return nil, err
	}
	payload := b[envHeaderSize:]
	if uint64(len(payload)) != h.payloadLen {
		return nil, ErrInvalidEnvelope
	}
	info := h.info()

	if info.Encrypted {
		if strings.TrimSpace(opts.Password) == "" {
			return nil, ErrPasswordRequired
		}
		aead, err := viewKey(opts.Password, h.salt[:])
		if err != nil {
			return nil, err
		}
		payload, err = aead.Open(nil, h.nonce[:], payload, nil)
		if err != nil {
			return nil, ErrInvalidPassword
		}
	}
	if !info.Compressed {
		return append([]byte(nil), payload...), nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	defer zr.Close()
	doc, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return doc, nil
}

func viewKey(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, 32, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

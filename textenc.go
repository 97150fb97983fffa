package kassabuch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextEncoding returns the encoding called name.
//
// "utf-16" writes little endian with a byte order mark, like the files of
// older bill books. Other names are looked up in the WHATWG index
// ("windows-1252", "iso-8859-15", ...).
func TextEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	return enc, nil
}

// decoder reads enc, unless the text starts with a byte order mark.
func decoder(enc encoding.Encoding) transform.Transformer {
	if enc == nil {
		enc = unicode.UTF8
	}
	return unicode.BOMOverride(enc.NewDecoder())
}

// encoder writes enc, characters it cannot represent are substituted.
func encoder(enc encoding.Encoding) *encoding.Encoder {
	if enc == nil {
		enc = unicode.UTF8
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder())
}

// readText reads a file written in enc and returns it as UTF-8.
func readText(path string, enc encoding.Encoding) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, _, err := transform.Bytes(decoder(enc), data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return text, nil
}

// writeText writes UTF-8 text to path in enc.
//
// The content goes to a temporary file first, renamed over path once
// complete, so that path never holds a partial write.
func writeText(path string, text []byte, enc encoding.Encoding) error {
	data, err := encoder(enc).Bytes(text)
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

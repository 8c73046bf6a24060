package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"pngstash/config"
	"pngstash/payload"
	"pngstash/png"
	"pngstash/util"
)

// splitArgs separates "-x" style flags from positional arguments.
func splitArgs(args []string) ([]string, map[string]bool) {
	positional := []string{}
	flags := map[string]bool{}
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			flags[a] = true
		} else {
			positional = append(positional, a)
		}
	}
	return positional, flags
}

func readPng(filename string) (*png.Png, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return png.ParsePng(raw)
}

// writePng rewrites output, taking a .bak copy first when the input
// file itself is being replaced.
func writePng(conf *config.FullConfig, input, output string, p *png.Png, force bool) error {
	if output == input && conf.Embed.Backup && force == false {
		if err := util.BackupFile(input); err != nil {
			return err
		}
		logger.LogInfo("Kept a backup copy at " + input + ".bak")
	}
	if err := util.WriteFileAtomic(output, p.Bytes(), 0644); err != nil {
		return err
	}
	logger.LogInfo("Wrote " + output)
	return nil
}

// packOptions builds payload options from flags, prompting for a
// passphrase when -p is set.
func packOptions(flags map[string]bool, compressDefault bool) (payload.Options, error) {
	opts := payload.Options{Compress: compressDefault || flags["-z"]}
	if flags["-p"] {
		pass, err := util.GetPasswd("Passphrase: ")
		if err != nil {
			return opts, err
		}
		if len(pass) == 0 {
			return opts, fmt.Errorf("Empty passphrase")
		}
		opts.Passphrase = pass
	}
	return opts, nil
}

func Encode(conf *config.FullConfig, args []string) error {
	pos, flags := splitArgs(args)
	if len(pos) < 3 {
		return fmt.Errorf("usage: encode <in.png> <TYPE> <message> [out.png]")
	}
	input, typeName, message := pos[0], pos[1], pos[2]
	output := input
	if len(pos) > 3 {
		output = pos[3]
	}

	typ, err := png.ChunkTypeFromString(typeName)
	if err != nil {
		return err
	}

	p, err := readPng(input)
	if err != nil {
		return err
	}

	opts, err := packOptions(flags, conf.Embed.Compress)
	if err != nil {
		return err
	}
	packed, err := payload.Pack([]byte(message), opts)
	if err != nil {
		return err
	}

	chunk := png.NewChunk(typ, packed)
	p.AppendChunk(chunk)
	logger.LogInfo(fmt.Sprintf("Appended %s chunk, %d bytes of data, crc %d",
		typ.String(), chunk.Length(), chunk.Crc()))
	return writePng(conf, input, output, p, flags["-f"])
}

func Decode(args []string) error {
	pos, flags := splitArgs(args)
	if len(pos) < 2 {
		return fmt.Errorf("usage: decode <in.png> <TYPE>")
	}
	input, typeName := pos[0], pos[1]

	p, err := readPng(input)
	if err != nil {
		return err
	}
	chunk := p.ChunkByType(typeName)
	if chunk == nil {
		return &png.NotFoundError{Type: typeName}
	}

	opts, err := packOptions(flags, false)
	if err != nil {
		return err
	}
	data, err := payload.Unpack(chunk.Data(), opts)
	if err != nil {
		return err
	}
	if utf8.Valid(data) == false {
		return png.ErrNonUtf8Payload
	}
	fmt.Println(string(data))
	return nil
}

func Remove(conf *config.FullConfig, args []string) error {
	pos, flags := splitArgs(args)
	if len(pos) < 2 {
		return fmt.Errorf("usage: remove <in.png> <TYPE> [out.png]")
	}
	input, typeName := pos[0], pos[1]
	output := input
	if len(pos) > 2 {
		output = pos[2]
	}

	p, err := readPng(input)
	if err != nil {
		return err
	}
	removed, err := p.RemoveChunk(typeName)
	if err != nil {
		return err
	}
	logger.LogInfo(fmt.Sprintf("Removed %s chunk (%d bytes of data)",
		removed.Type().String(), removed.Length()))
	return writePng(conf, input, output, p, flags["-f"])
}

func Print(args []string) error {
	pos, _ := splitArgs(args)
	if len(pos) < 1 {
		return fmt.Errorf("usage: print <in.png>")
	}

	p, err := readPng(pos[0])
	if err != nil {
		return err
	}
	fmt.Print(p.String())
	fmt.Printf("%d chunks, %d bytes total\n", len(p.Chunks()), len(p.Bytes()))
	return nil
}

// Scrub drops every ancillary chunk (with -u, only the unsafe-to-copy
// ones), leaving critical chunks alone.
func Scrub(conf *config.FullConfig, args []string) error {
	pos, flags := splitArgs(args)
	if len(pos) < 1 {
		return fmt.Errorf("usage: scrub <in.png> [out.png]")
	}
	input := pos[0]
	output := input
	if len(pos) > 1 {
		output = pos[1]
	}

	p, err := readPng(input)
	if err != nil {
		return err
	}

	dropped := 0
	for {
		name := ""
		for _, c := range p.Chunks() {
			typ := c.Type()
			if typ.IsCritical() {
				continue
			}
			if flags["-u"] && typ.IsSafeToCopy() {
				continue
			}
			name = typ.String()
			break
		}
		if name == "" {
			break
		}
		if _, err := p.RemoveChunk(name); err != nil {
			return err
		}
		dropped++
	}

	if dropped == 0 {
		logger.LogInfo("Nothing to scrub in " + input)
		return nil
	}
	logger.LogInfo(fmt.Sprintf("Dropped %d chunks", dropped))
	return writePng(conf, input, output, p, flags["-f"])
}

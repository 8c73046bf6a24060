package main

import (
	"fmt"
	"os"
	"path"

	"pngstash/config"
	"pngstash/util"
)

var logger *util.Logger

func main() {

	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		help()
		return
	}

	conf := loadConfig()
	logger = util.NewLogger(&conf.Logger)

	args := os.Args[2:]
	switch os.Args[1] {
	case "encode":
		if err := Encode(conf, args); err != nil {
			fatal("Failed to encode message:", err)
		}
	case "decode":
		if err := Decode(args); err != nil {
			fatal("Failed to decode message:", err)
		}
	case "remove":
		if err := Remove(conf, args); err != nil {
			fatal("Failed to remove chunk:", err)
		}
	case "print":
		if err := Print(args); err != nil {
			fatal("Failed to print file:", err)
		}
	case "scrub":
		if err := Scrub(conf, args); err != nil {
			fatal("Failed to scrub file:", err)
		}
	default:
		help()
		os.Exit(1)
	}
}

// loadConfig reads the user's configuration if there is one and falls
// back to defaults otherwise.
func loadConfig() *config.FullConfig {
	filename, err := config.ConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	if _, err := os.Stat(filename); err != nil {
		return config.DefaultConfig()
	}
	conf, err := config.LoadConfig(filename)
	if err != nil {
		fatal("Failed to load configuration:", err)
	}
	return conf
}

func fatal(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func help() {
	program := path.Base(os.Args[0])
	fmt.Printf(`usage: %s <command> [arguments]

commands:
  encode <in.png> <TYPE> <message> [out.png] [-z] [-p] [-f]
      append a chunk of the given 4-letter TYPE carrying message.
      -z compress the message, -p encrypt it with a passphrase,
      -f overwrite in place without keeping a .bak copy.
  decode <in.png> <TYPE> [-z] [-p]
      print the message carried by the first TYPE chunk. Pass the
      same -z/-p the message was encoded with.
  remove <in.png> <TYPE> [out.png] [-f]
      delete the first TYPE chunk and rewrite the file.
  print <in.png>
      show every chunk in the file.
  scrub <in.png> [out.png] [-u] [-f]
      drop all ancillary chunks (-u: only unsafe-to-copy ones).
  help
      show this message.
`, program)
}

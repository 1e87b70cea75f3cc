package cmd

import (
	"flag"

	"github.com/etnz/stockroom/backup"
	"github.com/etnz/stockroom/docs"
	"github.com/etnz/stockroom/storage"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs shell completion when the shell asks for it, and exits.
// Otherwise it returns immediately.
//
// Install it in bash with: COMP_INSTALL=1 stock
func Complete(name string) {
	completion(flag.CommandLine).Complete(name)
}

// completion returns the completion tree of the registered commands.
func completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, group := range Commands {
		for _, c := range group {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagPredictors(f),
				Args:  argPredictors[c.Name()],
			}
		}
	}
	return root
}

type boolFlag interface{ IsBoolFlag() bool }

// flagPredictors predicts flag values from their name.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(boolFlag); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		switch fl.Name {
		case "f":
			flags[fl.Name] = predict.Set{"all", "low", "zero", "recent"}
		case "file", "o":
			flags[fl.Name] = predict.Files("*")
		case "backup-dir":
			flags[fl.Name] = predict.Dirs("*")
		default:
			flags[fl.Name] = predict.Something
		}
	})
	return flags
}

var argPredictors = map[string]complete.Predictor{
	"rm":      itemNames,
	"nudge":   itemNames,
	"set":     itemNames,
	"show":    itemNames,
	"restore": backupNames,
	"topic":   complete.PredictFunc(func(string) []string { return docs.Topics() }),
}

// itemNames predicts the item names of the inventory file.
var itemNames = complete.PredictFunc(func(prefix string) []string {
	return storage.Load(inventoryFile, newLogger()).Names()
})

var backupNames = complete.PredictFunc(func(prefix string) []string {
	infos, _ := backup.List(backupDir)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
})

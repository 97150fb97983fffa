package cmd

import (
	"flag"

	"github.com/etnz/kassabuch/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"go.uber.org/zap"
)

// Complete answers a shell completion request for the kb command, and exits
// when there was one. It must run before flags are parsed.
func Complete(name string) {
	completionCommand().Complete(name)
}

func completionCommand() *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(Commands)),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, cmd := range Commands {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch cmd.Name() {
		case "search", "prices":
			sub.Args = complete.PredictFunc(predictProducts)
		case "template":
			sub.Flags["name"] = complete.PredictFunc(predictProducts)
		case "bill":
			sub.Flags["store"] = complete.PredictFunc(predictStores)
		case "import":
			sub.Args = predict.Files("*.csv")
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		c.Sub[cmd.Name()] = sub
	}
	return c
}

// flagPredictors completes nothing for flag values, boolean flags take none.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = nil
			return
		}
		flags[f.Name] = predict.Nothing
	})
	return flags
}

// predictProducts returns the displayed products matching prefix.
func predictProducts(prefix string) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	s, err := openSession(cfg, zap.NewNop())
	if err != nil {
		return nil
	}
	return s.ResolveTemplate(prefix).Candidates
}

// predictStores returns the stores matching prefix.
func predictStores(prefix string) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	refs, err := cfg.ReferenceFiles(zap.NewNop()).Load()
	if err != nil {
		return nil
	}
	return refs.MatchStores(prefix).Candidates
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"dataset-sql-assistant/internal/config"
	"dataset-sql-assistant/internal/datastore"
	"dataset-sql-assistant/internal/ingest"
	"dataset-sql-assistant/internal/model/chatmodel"
	"dataset-sql-assistant/internal/whatsapp"
)

func main() {
	cmd := &cli.Command{
		Name:    "datactl",
		Usage:   "operator tooling for the dataset SQL assistant",
		Version: "0.1.0",
		Commands: []*cli.Command{
			cmdLoad(),
			cmdTables(),
			cmdModels(),
			cmdSend(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStore(ctx context.Context) (*config.Config, *datastore.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := datastore.EnsureDatabaseExists(ctx, cfg.Store); err != nil {
		return nil, nil, err
	}
	store, err := datastore.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func cmdLoad() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "ingest all CSV files from the data directory into the store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory to scan instead of DATA_DIR",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			dir := cmd.String("dir")
			if dir == "" {
				dir = cfg.Store.DataDir
			}

			loaded, err := ingest.NewLoader(store).LoadDir(ctx, dir)
			if err != nil {
				return err
			}
			for _, t := range loaded {
				log.Info("loaded", "table", t.TableName, "rows", t.RowCount, "file", t.SourceFile)
			}
			log.Info("done", "tables", len(loaded))
			return nil
		},
	}
}

func cmdTables() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "list ingested tables with their columns and sample rows",
		Action: func(ctx context.Context, _ *cli.Command) error {
			_, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.AllTableInfo(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("no tables loaded")
				return nil
			}
			fmt.Println(datastore.SchemaPrompt(infos))
			return nil
		},
	}
}

func cmdModels() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "list chat models available for the configured provider",
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			names, err := chatmodel.ListModels(ctx, cfg.Model)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func cmdSend() *cli.Command {
	var to string
	var body string

	return &cli.Command{
		Name:  "send",
		Usage: "send a WhatsApp message through the configured Twilio account",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:        "to",
				UsageText:   "<recipient number>",
				Destination: &to,
				Min:         1,
				Max:         1,
			},
			&cli.StringArg{
				Name:        "body",
				UsageText:   "<message body>",
				Destination: &body,
				Min:         1,
				Max:         1,
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sender, err := whatsapp.NewSender(cfg.Twilio)
			if err != nil {
				return err
			}
			sid, err := sender.Send(to, body)
			if err != nil {
				return err
			}
			log.Info("message sent", "sid", sid)
			return nil
		},
	}
}

// Command admin runs maintenance tasks against the configured database:
// schema migration, sample data, and back-office login management.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"jandervidros/internal/config"
	"jandervidros/internal/dto"
	"jandervidros/internal/infra"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
	"jandervidros/internal/service"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "admin",
	Short:        "Jander Vidros back-office maintenance",
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		infra.SetupLogger(infra.LogOptions{Level: level})
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log SQL and debug output")
	rootCmd.AddCommand(migrateCmd, seedCmd, hashCmd, setCredentialCmd)
}

// openStore connects with the same settings as the server and migrates.
func openStore() (*repository.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := infra.NewDatabase(infra.DBOptions{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseURL,
		Debug:        verbose,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, nil, err
	}
	return repository.NewStore(db), cfg, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed the default login",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		seeded, err := service.NewAuthService(repository.NewCredentialRepository(store), cfg).
			EnsureDefaultCredential(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("schema up to date (%s)\n", store.Driver())
		if seeded {
			fmt.Printf("default login created: %s / %s\n", service.DefaultUsername, service.DefaultPassword)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample products for a fresh install",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return seedProducts(cmd.Context(), repository.NewProductRepository(store))
	},
}

func seedProducts(ctx context.Context, repo repository.ProductRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("%d products already present, nothing to do\n", len(existing))
		return nil
	}
	samples := []model.Product{
		{Name: "Tempered Glass 8mm", Category: "Glass", Quantity: 20, MinStock: 10, Price: decimal.RequireFromString("89.90")},
		{Name: "Float Glass 4mm", Category: "Glass", Quantity: 35, MinStock: 15, Price: decimal.RequireFromString("42.50")},
		{Name: "Bathroom Mirror 60x80", Category: "Mirrors", Quantity: 6, MinStock: 3, Price: decimal.RequireFromString("120.00")},
		{Name: "Aluminium Frame Profile", Category: "Frames", Quantity: 50, MinStock: 20, Price: decimal.RequireFromString("18.75")},
		{Name: "Neutral Silicone 280g", Category: "Supplies", Quantity: 2, MinStock: 12, Price: decimal.RequireFromString("24.90")},
	}
	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	fmt.Printf("%d sample products inserted\n", len(samples))
	return nil
}

var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		h, err := service.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(h)
		return nil
	},
}

var setCredentialCmd = &cobra.Command{
	Use:   "set-credential <username> <password>",
	Short: "Replace the back-office login",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		err = service.NewAuthService(repository.NewCredentialRepository(store), cfg).
			ChangeCredentials(cmd.Context(), dto.ChangeCredentialsRequest{
				Username: args[0], Password: args[1], ConfirmPassword: args[1],
			})
		if err != nil {
			return err
		}
		fmt.Printf("login set to %q\n", args[0])
		return nil
	},
}

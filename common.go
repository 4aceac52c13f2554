package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/sheets/v4"
)

const (
	configFileName  = ".gcalplan.toml"
	dbFileName      = ".gcalplan.db"
	defaultTimeZone = "Europe/Warsaw"
)

type SheetConfig struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
	Range         string `toml:"range"`
}

type Config struct {
	ClientID       string            `toml:"client_id"`
	ClientSecret   string            `toml:"client_secret"`
	AccountName    string            `toml:"account_name"`
	VerbosityLevel int               `toml:"verbosity_level"`
	TimeZone       string            `toml:"timezone"`
	SemesterFile   string            `toml:"semester_file"`
	DeleteOrphans  bool              `toml:"delete_orphans"`
	WatchSchedule  string            `toml:"watch_schedule"`
	APIEndpoint    string            `toml:"api_endpoint"`
	Sheet          SheetConfig       `toml:"sheet"`
	Colors         map[string]string `toml:"colors"`

	// dir is where the config file was found; the database lives next to it.
	dir string
}

const defaultVerbosityLevel = 1

var verbosityLevel = defaultVerbosityLevel

// defaultColors follow the Google Calendar palette ids.
var defaultColors = map[string]string{
	string(CourseLecture):    "12",
	string(CourseProject):    "15",
	string(CourseTutorial):   "2",
	string(CourseLaboratory): "6",
}

func (c *Config) normalize() {
	if c.AccountName == "" {
		c.AccountName = "default"
	}
	if c.TimeZone == "" {
		c.TimeZone = defaultTimeZone
	}
	if c.SemesterFile == "" {
		c.SemesterFile = "semester.json"
	}
	if c.WatchSchedule == "" {
		c.WatchSchedule = "0 6 * * *"
	}
	if c.Sheet.SpreadsheetID != "" && c.Sheet.Range == "" {
		c.Sheet.Range = "A:K"
	}
	if c.Colors == nil {
		c.Colors = defaultColors
	}
}

// courseColors returns the configured color per course type.
func (c *Config) courseColors() map[CourseType]string {
	colors := make(map[CourseType]string, len(c.Colors))
	for courseType, colorID := range c.Colors {
		colors[CourseType(courseType)] = colorID
	}
	return colors
}

// semesterPath resolves a relative semester file against the config dir.
func (c *Config) semesterPath() string {
	if filepath.IsAbs(c.SemesterFile) || c.dir == "" {
		return c.SemesterFile
	}
	return filepath.Join(c.dir, c.SemesterFile)
}

// readConfig tries the given path first, then $HOME/.config/gcalplan/.
func readConfig(filename string) (*Config, error) {
	dir := filepath.Dir(filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config", "gcalplan")
		data, err = os.ReadFile(filepath.Join(dir, filepath.Base(filename)))
		if err != nil {
			return nil, err
		}
	}

	var config Config
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", filename, err)
	}
	// 0 is a valid level (silent), so only a missing key gets the default.
	if !meta.IsDefined("verbosity_level") {
		config.VerbosityLevel = defaultVerbosityLevel
	}
	config.dir = dir
	config.normalize()

	verbosityLevel = config.VerbosityLevel

	return &config, nil
}

func openDB(config *Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", filepath.Join(config.dir, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := dbInit(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newOAuthConfig(config *Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope, sheets.SpreadsheetsReadonlyScope},
	}
}

func saveToken(db *sql.DB, accountName string, token *oauth2.Token) error {
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return err
	}

	_, err = db.Exec("INSERT OR REPLACE INTO tokens (account_name, token) VALUES (?, ?)", accountName, tokenJSON)
	return err
}

func loadToken(db *sql.DB, accountName string) (*oauth2.Token, error) {
	var tokenJSON []byte
	err := db.QueryRow("SELECT token FROM tokens WHERE account_name = ?", accountName).Scan(&tokenJSON)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("error unmarshaling token: %w", err)
	}
	return &token, nil
}

// getClient returns an authorized HTTP client for the account, running the
// browser flow when no usable token is stored. Refreshed tokens are saved.
func getClient(ctx context.Context, config *oauth2.Config, db *sql.DB, accountName string) (*http.Client, error) {
	token, err := loadToken(db, accountName)
	if errors.Is(err, sql.ErrNoRows) {
		printVerbosely(1, "  ❗️ No token found for account %s. Obtaining a new token.\n", accountName)
		return authorizeAccount(ctx, config, db, accountName)
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving token from database: %w", err)
	}

	newToken, err := config.TokenSource(ctx, token).Token()
	if err != nil {
		if strings.Contains(err.Error(), "expired or revoked") {
			printVerbosely(1, "  ❗️ Token expired or revoked for account %s. Obtaining a new token.\n", accountName)
			return authorizeAccount(ctx, config, db, accountName)
		}
		return nil, fmt.Errorf("error retrieving token from token source: %w", err)
	}

	if newToken.AccessToken != token.AccessToken {
		printVerbosely(2, "Token refreshed for account %s.\n", accountName)
		if err := saveToken(db, accountName, newToken); err != nil {
			return nil, fmt.Errorf("error saving refreshed token: %w", err)
		}
	}

	return config.Client(ctx, newToken), nil
}

func authorizeAccount(ctx context.Context, config *oauth2.Config, db *sql.DB, accountName string) (*http.Client, error) {
	token, err := getTokenFromWeb(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := saveToken(db, accountName, token); err != nil {
		return nil, fmt.Errorf("error saving token: %w", err)
	}
	return config.Client(ctx, token), nil
}

func printVerbosely(verbosity int, format string, a ...interface{}) {
	// 0 - no output, other than critical errors
	// 1 - summary of a run and calendar links
	// 2 - every change applied
	// 3 - every course, including the ones already up to date
	if verbosity <= verbosityLevel {
		fmt.Printf(format, a...)
	}
}

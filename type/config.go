package _type

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ReportsRootDir string = "./data/reports"
	SrcDataDir     string = "./data/records"
	SnapshotDir    string = "./src_data"
)

// Dataset names and their rendering targets.
const (
	DatasetSpotPrices = "areSpotPrices"
	DatasetTV55Inch   = "tv55inch"
	DatasetTVAllSizes = "tvAllSizes"
	DatasetTVEnergy   = "tvEnergy"

	TargetLine       = "chart1"
	TargetBar        = "chart2"
	TargetGroupedBar = "chart3"
	TargetScatter    = "chart4"
)

// Margin is the space kept around the plot area, in pixels.
type Margin struct {
	Top    int `yaml:"top" validate:"gte=0"`
	Right  int `yaml:"right" validate:"gte=0"`
	Bottom int `yaml:"bottom" validate:"gte=0"`
	Left   int `yaml:"left" validate:"gte=0"`
}

// Viewport is the pixel size of one chart container.
type Viewport struct {
	Width  int    `yaml:"width" validate:"gte=0"`
	Height int    `yaml:"height" validate:"gte=0"`
	Margin Margin `yaml:"margin"`
}

// Inner returns the plot area left after the margins.
func (v Viewport) Inner() (width, height int) {
	return v.Width - v.Margin.Left - v.Margin.Right, v.Height - v.Margin.Top - v.Margin.Bottom
}

// DatasetConfig binds a source location to a dataset name. Location is a
// file path (.csv, .xlsx or .parquet), an http(s) URL or "mysql:<table>".
type DatasetConfig struct {
	Name     string   `yaml:"name" validate:"required"`
	Location string   `yaml:"location" validate:"required"`
	Sheet    string   `yaml:"sheet"`
	Expect   []string `yaml:"expect"`
}

// MySQLConfig is the connection used by "mysql:" locations.
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

func (m MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.Database)
}

type Config struct {
	DstPort        string          `yaml:"port"`
	LogLevel       string          `yaml:"log_level" validate:"oneof=debug info warn error"`
	Viewport       Viewport        `yaml:"viewport"`
	Datasets       []DatasetConfig `yaml:"datasets" validate:"dive"`
	MySQL          MySQLConfig     `yaml:"mysql"`
	ReportFile     string          `yaml:"report_file"`
	SnapshotDir    string          `yaml:"snapshot_dir"`
	SnapshotFormat string          `yaml:"snapshot_format" validate:"oneof=csv parquet"`
	ImageFormat    string          `yaml:"image_format" validate:"oneof=png svg"`
	StrictNumbers  bool            `yaml:"strict_numbers"`
	LoadTimeout    time.Duration   `yaml:"load_timeout" validate:"gte=0"`
}

// DefaultDatasets are the four inputs of the dashboard, in render order.
func DefaultDatasets() []DatasetConfig {
	return []DatasetConfig{
		{Name: DatasetSpotPrices, Location: SrcDataDir + "/Ex5_ARE_Spot_Prices.csv"},
		{Name: DatasetTV55Inch, Location: SrcDataDir + "/Ex5_TV_energy_55inchtv_byScreenType.csv"},
		{Name: DatasetTVAllSizes, Location: SrcDataDir + "/Ex5_TV_energy_Allsizes_byScreenType.csv"},
		{Name: DatasetTVEnergy, Location: SrcDataDir + "/Ex5_TV_energy.csv"},
	}
}

// FillDefault sets every zero field to its documented default.
func (c *Config) FillDefault() {
	if c.DstPort == "" {
		c.DstPort = "11235"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Viewport.Width == 0 {
		c.Viewport.Width = 960
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = 500
	}
	if c.Viewport.Margin == (Margin{}) {
		c.Viewport.Margin = Margin{Top: 20, Right: 30, Bottom: 40, Left: 50}
	}

	for _, d := range DefaultDatasets() {
		if _, ok := c.Dataset(d.Name); !ok {
			c.Datasets = append(c.Datasets, d)
		}
	}

	if c.MySQL.Port == "" {
		c.MySQL.Port = "6001"
	}
	if c.MySQL.Host == "" {
		c.MySQL.Host = "127.0.0.1"
	}
	if c.MySQL.Password == "" {
		c.MySQL.Password = "111"
	}
	if c.MySQL.User == "" {
		c.MySQL.User = "dump"
	}
	if c.MySQL.Database == "" {
		c.MySQL.Database = "system"
	}

	if c.SnapshotDir == "" {
		c.SnapshotDir = SnapshotDir
	}
	if c.SnapshotFormat == "" {
		c.SnapshotFormat = "csv"
	}
	if c.ImageFormat == "" {
		c.ImageFormat = "png"
	}
}

// Dataset returns the configured dataset with the given name.
func (c *Config) Dataset(name string) (DatasetConfig, bool) {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetConfig{}, false
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return WrapError(ErrCodeInvalidConfiguration, "invalid configuration", err)
	}
	seen := make(map[string]bool, len(c.Datasets))
	for _, d := range c.Datasets {
		if seen[d.Name] {
			return NewErrorf(ErrCodeInvalidConfiguration, "dataset %q configured twice", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// LoadConfig reads a YAML file, fills the defaults and validates the result.
// An empty path yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, WrapErrorf(ErrCodeInvalidConfiguration, err, "read config %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, WrapErrorf(ErrCodeInvalidConfiguration, err, "decode config %s", path)
		}
	}
	cfg.FillDefault()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

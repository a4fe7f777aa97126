package flags

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// inputEnvPrefix is how the GitHub Actions runner exposes inputs, e.g. INPUT_GITHUB-TOKEN.
const inputEnvPrefix = "INPUT"

// Inputs resolves action inputs. A flag set on the command line wins over the INPUT_<NAME>
// environment variable, which wins over the flag default.
type Inputs struct {
	v *viper.Viper
}

func NewInputs(fs *pflag.FlagSet, names ...string) (*Inputs, error) {
	v := viper.New()
	v.SetEnvPrefix(inputEnvPrefix)
	v.AutomaticEnv()

	for _, name := range names {
		flag := fs.Lookup(name)
		if flag == nil {
			return nil, errors.Errorf("no flag named %s", name)
		}
		if err := v.BindPFlag(name, flag); err != nil {
			return nil, errors.Wrapf(err, "unable to bind flag %s", name)
		}
	}

	return &Inputs{v: v}, nil
}

func (in *Inputs) GetString(name string) string {
	return in.v.GetString(name)
}

func (in *Inputs) GetInt(name string) int {
	return in.v.GetInt(name)
}

func (in *Inputs) GetInt64(name string) int64 {
	return in.v.GetInt64(name)
}

func (in *Inputs) GetBool(name string) bool {
	return in.v.GetBool(name)
}

package configs

import (
	"errors"
	"fmt"
)

var errMissingSecret = errors.New("JWT_SECRET must be set outside development")

func errUnknownDriver(d string) error {
	return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", d)
}

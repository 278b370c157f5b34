package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The struct is built once at process start and
// passed into constructors; nothing reads the environment after Load returns.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    DBSSLMode      string // postgres sslmode (disable, require, ...)
    JWTSecret      string // secret used to sign session tokens
    TokenTTLMin    int    // session token time-to-live in minutes
    BcryptCost     int    // bcrypt cost for password hashing
    CORSOrigin     string // allowed cross-origin caller
    SweepIntervalS int    // completion sweeper interval in seconds
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values
// fall back to sensible defaults.
func Load() Config {
    return Config{
        Env:            getenv("APP_ENV", "dev"),        // environment (dev/test/prod)
        Port:           must("APP_PORT"),                // port to bind the HTTP server
        DBUser:         must("DB_USER"),                 // database user
        DBPass:         os.Getenv("DB_PASS"),            // database password (empty allowed)
        DBHost:         must("DB_HOST"),                 // database host
        DBPort:         must("DB_PORT"),                 // database port
        DBName:         must("DB_NAME"),                 // database name
        DBSSLMode:      getenv("DB_SSLMODE", "disable"), // TLS mode for the DB connection
        JWTSecret:      must("JWT_SECRET"),              // secret used for signing session tokens
        TokenTTLMin:    getenvInt("TOKEN_TTL_MIN", 60),  // session lifetime, one hour by default
        BcryptCost:     getenvInt("BCRYPT_COST", 10),    // bcrypt cost factor
        CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:4200"), // frontend origin
        SweepIntervalS: getenvInt("SWEEP_INTERVAL_SEC", 300),           // completion sweep cadence
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenv returns the value of an optional environment variable or the
// provided default when unset.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getenvInt is like getenv but converts the value into an integer.  An
// unparsable value is fatal rather than silently defaulted.
func getenvInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, v)
    }
    return n
}

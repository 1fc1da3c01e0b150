package repo

// sampleConfig is written to the data directory on first run so users have
// a documented config file to edit.
const sampleConfig = `; The directory to store data such as the paymentd database and log files.
; datadir=~/.paymentd

; Universal network settings.
; The interface/port for the JSON API gateway to listen on.
; gatewayaddr=127.0.0.1:4002

; Only allow API connections from these IPs.
; apiallowedip=127.0.0.1

; A cookie to use for authentication in addition to the other authentication options.
; apicookie=

; A username and sha256 hashed password to use for basic authentication in the API.
; apiusername=
; apipassword=

; Disable CORS headers on API responses.
; apinocors=1

; Only run the API in public mode. Read-only queries only.
; apipublicgateway=1

; Use SSL on the API.
; usessl=1
; sslcertfile=
; sslkeyfile=

; The platform fee percent applied when escrow is released to a worker.
; Only used when initializing a new database. After that change it through
; the API so the running daemon picks it up.
; feepercent=5

; The minimum deposit and withdrawal amounts in satoshis. Only used when
; initializing a new database.
; mindeposit=1000
; minwithdrawal=10000

; Override the default exchange rate API sources. The sources must conform
; to the BitcoinAverage API specification.
; exchangeratesource=https://ticker.openbazaar.org/api

; Disable the fiat exchange rate provider.
; disableexchangerates=1

; Debug logging level.
; Valid levels are {debug, info, notice, warning, error, critical}
; loglevel=info
`

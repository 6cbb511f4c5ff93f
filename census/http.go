package census

import "time"

// BaseURL is the host all Census API requests are made against.
const BaseURL = "https://app.getcensus.com"

// HTTPRequestTimeout is the default timeout for all HTTP requests to the Census API.
const HTTPRequestTimeout = 60 * time.Second

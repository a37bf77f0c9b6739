package constants

const USER_AGENT = "searchlight/0.1.0 (+https://github.com/bennysakos/searchlight)"

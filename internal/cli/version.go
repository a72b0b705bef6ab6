package cli

const Version = "0.1.0" // major.minor.patch

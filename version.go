package incorporate

// Version is the release of the module, overridden at build time with
// -ldflags "-X github.com/aretw0/incorporate.Version=...".
var Version = "0.3.0"

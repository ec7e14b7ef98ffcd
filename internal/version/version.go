package version

// AppVersion is the release of this tool. The web front end reads it from
// the environment report and uses it as the schema version of the
// configuration it sends back.
var AppVersion = "3.1.1"

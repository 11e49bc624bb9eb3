package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigFnPrefix = ConfigPrefix + delimiter + "fn"

	ConfigFnTracePrefix = ConfigFnPrefix + delimiter + "trace"
	ConfigFnTraceName   = ConfigFnTracePrefix + delimiter + "name"
	ConfigFnTraceFlags  = ConfigFnTracePrefix + delimiter + "flags"
	ConfigFnTraceLevel  = ConfigFnTracePrefix + delimiter + "level"
)

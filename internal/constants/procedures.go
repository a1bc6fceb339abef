package constants

const (
	ProcedureFilling      = "Filling"
	ProcedureCleaning     = "Cleaning"
	ProcedureExtraction   = "Extraction"
	ProcedureConsultation = "Consultation"
	ProcedureRootCanal    = "Root Canal"
	ProcedureCrown        = "Crown"
	ProcedureWhitening    = "Whitening"
	ProcedureBraces       = "Braces"

	// ProcedureCustom marks an appointment whose name lives in CustomProcedureName.
	ProcedureCustom = "Custom"
)

// Procedures is the preset procedure list, in display order. Custom is not part of it.
var Procedures = []string{
	ProcedureFilling,
	ProcedureCleaning,
	ProcedureExtraction,
	ProcedureConsultation,
	ProcedureRootCanal,
	ProcedureCrown,
	ProcedureWhitening,
	ProcedureBraces,
}

// IsKnownProcedure reports whether name is a preset procedure or Custom.
func IsKnownProcedure(name string) bool {
	if name == ProcedureCustom {
		return true
	}
	for _, p := range Procedures {
		if p == name {
			return true
		}
	}
	return false
}

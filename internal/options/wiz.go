package options

// IaCScan is the flag surface of `wizcli iac scan` forwarded by the hook.
var IaCScan = MustCatalog(
	// repeatable
	Spec{Name: "path", Kind: KindStrings, Required: true, Usage: "File or directory to scan (repeatable)"},
	Spec{Name: "policy", Kind: KindStrings, Usage: "Policy to evaluate against (repeatable)"},
	Spec{Name: "application", Kind: KindStrings, Usage: "Application the scan belongs to (repeatable)"},
	Spec{Name: "output", Kind: KindStrings, Usage: "Extra output as file-path,format[,policy-hits-only] (repeatable)"},
	Spec{Name: "tag", Kind: KindStrings, Usage: "Tag in key=value form attached to the scan (repeatable)"},
	Spec{Name: "types", Kind: KindStrings, Usage: "IaC type to scan, e.g. Terraform or Kubernetes (repeatable)"},
	Spec{Name: "parameter_files", Kind: KindStrings, Usage: "Parameter or variable file for the scanned templates (repeatable)"},

	// scalar
	Spec{Name: "format", Kind: KindString, Usage: "Output format: human, json or sarif"},
	Spec{Name: "project", Kind: KindString, Usage: "Wiz project ID to scope the scan to"},
	Spec{Name: "timeout", Kind: KindString, Usage: "Operation timeout, e.g. 1h0m0s"},
	Spec{Name: "name", Kind: KindString, Usage: "Scan name"},
	Spec{Name: "by_policy_hits", Kind: KindString, Usage: "Fail only on policy hits of this action: audit or block"},
	Spec{Name: "log", Kind: KindString, Usage: "File path to write the scanner log to"},
	Spec{Name: "dir_traversal_workers", Kind: KindInt, Usage: "Number of directory traversal workers"},
	Spec{Name: "rule_evaluation_workers", Kind: KindInt, Usage: "Number of rule evaluation workers"},
	Spec{Name: "max_cloudformation_intrinsics_depth", Kind: KindInt, Usage: "Maximum depth of CloudFormation intrinsic functions to resolve"},

	// boolean
	Spec{Name: "secrets", Kind: KindBool, Usage: "Scan for secrets"},
	Spec{Name: "no_color", Kind: KindBool, Usage: "Disable colored scanner output"},
	Spec{Name: "no_style", Kind: KindBool, Usage: "Disable styled scanner output"},
	Spec{Name: "ignore_comments", Kind: KindBool, Usage: "Ignore in-code ignore comments"},
	Spec{Name: "policy_hits_only", Kind: KindBool, Usage: "Only show results that failed a policy"},
	Spec{Name: "show_secret_snippets", Kind: KindBool, Usage: "Include secret snippets in the results"},
)

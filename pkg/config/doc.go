/*
Package config manages configuration parsing and validation for rewriterc.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |           |           |
	+-----+-----+ +---+---+ +-----+-----+ +---+---+
	|   YAML    | |  HCL  | |   JSON    | |  Env  |
	|  Parser   | |Parser | |  Parser   | |(.env) |
	+-----------+ +-------+ +-----------+ +-------+

🎯 Purpose:
- Provides the built-in pass: Swift files under Olas, observe/NDKDataSource renames
- Loads overrides from .rewriterc.{yaml,yml,hcl,json}
- Applies REWRITERC_* environment overrides, optionally from a .env file
- Validates rules before any file is touched

🔄 Precedence (highest first):
1. Command line flags
2. Environment
3. Config file
4. Built-in defaults

A config file that lists rules replaces the built-in rules entirely; rule
order in the file is the order in which rules run.

🔍 Example (YAML):

	root: Sources
	suffix: .swift
	exclude:
	  - .build
	  - Pods
	rules:
	  - from: '\.observe\('
	    to: '.subscribe('
	    regex: true

🔍 Example (HCL):

	root = default_root
	rule {
	  from  = "NDKDataSource"
	  to    = "NDKSubscription"
	}
*/
package config

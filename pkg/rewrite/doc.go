/*
Package rewrite applies an ordered list of text rules to every candidate file
below a root, writing back only the files whose content changed.

	+-------------+
	|  Rewriter   |
	|   (Pass)    |
	+------+------+
	       |
	+------+------+      +-------------+
	|    walk     | ---> |  Transform  |
	| (Discover)  |      | (per file)  |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     |   status    |
	                     |  log (UI)   |
	                     +-------------+

🔄 Per file:
1. Read the whole file; reject content that is not UTF-8 text
2. Apply every rule, in order, to the evolving content
3. Compare with the original
4. If different, replace the file through a temp file and rename
5. Report the file as fixed; unchanged files are silent

⚡ Failure policy:
A file that cannot be read, decoded or written is reported and skipped; the
pass continues with the next file. Only an invalid root or a cancelled context
stops a pass early.
*/
package rewrite

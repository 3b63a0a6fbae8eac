/*
Package status tracks what happened to each candidate file during a pass.

	            +-------------+
	            |   Manager   |
	            | (Outcomes)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	| FileInfo  |           | Summary |
	| (per file)|           | (counts)|
	+-----------+           +---------+

🎯 Purpose:
- Records one outcome per file: modified, unchanged, pending or failed
- Counts outcomes for the end-of-pass line and the exit code
- Formats outcomes and progress for structured logs

🔄 Flow:
1. The rewriter announces the number of candidates (StartOperation)
2. Each processed file is recorded with TrackFile
3. Summary is read once the pass completes

🔍 Example:

	mgr := status.New(zerolog.Ctx(ctx))
	mgr.StartOperation(ctx, len(files))
	mgr.TrackFile(ctx, status.FileInfo{Path: path, Status: status.StatusModified, Replacements: 3})
	mgr.FinishOperation(ctx)
	fmt.Println(status.NewDefaultFileFormatter().FormatSummary(mgr.Summary()))
*/
package status

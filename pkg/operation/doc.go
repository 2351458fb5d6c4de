/*
Package operation drives the batch conversion pipeline for pyxelate.

	            +-------------+
	            |   Runner    |
	            |  (Driver)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	| Converter |           |  Store  |
	| (Pixels)  |           |  (I/O)  |
	+-----------+           +---------+

🎯 Purpose:
- Resolves input paths into conversion tasks
- Runs tasks sequentially, one image at a time
- Applies the strict-then-permissive retry policy
- Aggregates counters and timing for the status display

🔄 Flow:
1. Resolve the input root into tasks and an exclusion count
2. For each task: decode, convert (strict, then permissive on warning),
   optionally upscale, encode (strict, then permissive on failure)
3. Classify each task as success, degraded, or fatal
4. Record per-task duration for remaining-time projection

⚡ Key Responsibilities:
- Retry policy and outcome classification
- Cancellation between pipeline stages
- User-facing issue reporting (warnings and errors)
- Counter bookkeeping

🤝 Interfaces:
- Converter: produces a pixelated image from a decoded one
- Store: reads, writes, and scales images

📝 Design Philosophy:
The runner owns the loop and all policy. Converter and Store are narrow
interfaces so the pipeline can be exercised in tests with fakes, and so the
quantizer never needs to know about retries or the terminal.
*/
package operation

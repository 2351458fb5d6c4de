/*
Package status renders batch progress on the terminal for pyxelate.

	            +-------------+
	            |  Renderer   |
	            |  (UI/UX)    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	| Counters  |           | Window  |
	| (State)   |           | (Timing)|
	+-----------+           +---------+

🎯 Purpose:
- Draws a two-line progress region (bar + counters) at the bottom of the terminal
- Keeps the region anchored below interleaved log output
- Projects remaining time from a bounded window of recent durations
- Measures elapsed time as process CPU time, not wall clock

🔄 Flow:
1. Driver updates Counters and pushes durations into the Window
2. Driver prints messages through Logf, which erases the region first
3. Renderer redraws the region after every message so the bar stays last
4. Final redraw collapses the region into scrollback

⚡ Key Responsibilities:
- ANSI cursor control (erase line, cursor up)
- Bar geometry and percentage formatting
- H:MM:SS clock formatting
- Remaining-time projection ("Calculating..." until the window has samples)

📝 Design Philosophy:
The renderer owns nothing but presentation. Counters and the timing window
are plain state owned by the driver; the renderer reads them at redraw time.
All writes to the terminal go through this package so that the two-line
region can never be corrupted by a stray print.
*/
package status

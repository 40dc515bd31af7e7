// Package freq enumerates the reporting frequencies understood by tsfreq.
//
// A Frequency is a closed integer code. Codes are grouped by thousands so that
// a smaller group means a coarser period:
//
//	Annual   1000    A
//	Quarter  2000    Q
//	Month    3000    M
//	Week     4000+d  W, W-SUN ... W-SAT (d is the anchor time.Weekday)
//	Business 5000    B
//	Day      6000    D
//	Hour     7000    H
//	Minute   8000    T
//	Second   9000    S
//
// # Parsing Codes
//
// The single-letter codes are a stable external vocabulary:
//
//	f, err := freq.Parse("W-THU")
//	fmt.Println(f, f.Anchor()) // W-THU Thursday
//
// # Static Properties
//
// Day and the intraday frequencies have a fixed length (Seconds returns it);
// the others are calendar-variable and Seconds returns 0.
//
//	freq.Hour.IsFixed()            // true
//	freq.Month.Coarser(freq.Day)   // true
//	freq.Minute.PeriodsPerDay()    // 1440
package freq

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs one shell command per group and collects what each command prints.
//
// A command is started with Spawn, fed through its Handle's RecordWriter and reaped with
// WaitWithOutput. CaptureOutput does all three for one group. RunSequential and RunParallel
// apply CaptureOutput to every group of a collection, the latter in a bounded worker pool,
// and hand each output to a Reporter. Results is the Reporter used by the command line tool.
//
// Commands are never killed. Once a group has been dispatched its command runs to completion,
// even if the run is cancelled; cancellation only stops groups that have not started yet.
package runbatch

package config

type WorkerKeyStruct struct {
	SubmissionNotifyQueue string
}

var WorkerKey = &WorkerKeyStruct{
	SubmissionNotifyQueue: "submission_notify_queue",
}

package engine

// Observers fans run notifications out to every non-nil observer in order.
func Observers(obs ...RunObserver) RunObserver {
	var list multiObserver
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []RunObserver

func (m multiObserver) RunStarted(info RunInfo) {
	for _, o := range m {
		o.RunStarted(info)
	}
}

func (m multiObserver) RunFinished(info RunInfo, summary RunSummary) {
	for _, o := range m {
		o.RunFinished(info, summary)
	}
}

// ObserverFuncs adapts plain functions to RunObserver. Either may be nil.
type ObserverFuncs struct {
	Started  func(RunInfo)
	Finished func(RunInfo, RunSummary)
}

func (f ObserverFuncs) RunStarted(info RunInfo) {
	if f.Started != nil {
		f.Started(info)
	}
}

func (f ObserverFuncs) RunFinished(info RunInfo, summary RunSummary) {
	if f.Finished != nil {
		f.Finished(info, summary)
	}
}

package qualification

import "github.com/m04kA/SMC-NotaryService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor

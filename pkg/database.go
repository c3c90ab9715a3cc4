package fribtrace

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

const detectorParametersQuery = "SELECT GetFrequency, MaxCorrection FROM DetectorParameters WHERE MinRun <= ? and MaxRun >= ?"

// LoadDetectorParameters reads the GET sampling frequency and window length
// valid for a run from the run catalogue.
func LoadDetectorParameters(db *sqlx.DB, runNumber int, verbosity int) (DetectorParameters, error) {
	if verbosity > 0 {
		message := fmt.Sprintf("Reading detector parameters of run %d from database", runNumber)
		logger.Info(message, "database")
	}
	if verbosity > 2 {
		message := fmt.Sprintf("Query: %s", detectorParametersQuery)
		logger.Info(message, "database")
	}

	var params DetectorParameters
	err := db.Get(&params, detectorParametersQuery, runNumber, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error querying detector parameters for run %d: %w", runNumber, err)
		return DetectorParameters{}, errMessage
	}
	if err := params.Validate(); err != nil {
		return DetectorParameters{}, fmt.Errorf("run %d: %w", runNumber, err)
	}
	return params, nil
}

// DetectorParametersForRun takes the detector parameters from the
// configuration file when the database is disabled and from the run
// catalogue otherwise.
func DetectorParametersForRun(config Configuration) (DetectorParameters, error) {
	if config.NoDB {
		if err := config.Detector.Validate(); err != nil {
			return DetectorParameters{}, err
		}
		return config.Detector, nil
	}

	dbConn, err := ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return DetectorParameters{}, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()
	return LoadDetectorParameters(dbConn, config.RunNumber, config.Verbosity)
}

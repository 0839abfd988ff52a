package domain

import "fmt"

type Cluster string

const (
	ClusterHighHigh Cluster = "High_High"
	ClusterHighLow  Cluster = "High_Low"
	ClusterLowHigh  Cluster = "Low_High"
	ClusterLowLow   Cluster = "Low_Low"
)

// Clusters lists every label in a stable order.
var Clusters = []Cluster{ClusterHighHigh, ClusterHighLow, ClusterLowHigh, ClusterLowLow}

// ClusterFor labels a record against the dataset medians. Values equal to the
// median count as High.
func ClusterFor(age, years int, ageMedian, yearsMedian float64) Cluster {
	return Cluster(level(float64(age), ageMedian) + "_" + level(float64(years), yearsMedian))
}

func level(v, median float64) string {
	if v >= median {
		return "High"
	}
	return "Low"
}

func ParseCluster(s string) (Cluster, error) {
	for _, c := range Clusters {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCluster, s)
}

// ClusterPartition holds one cluster's records, all of them and split by
// gender. Either gender slice may be empty.
type ClusterPartition struct {
	Cluster Cluster
	All     []EmployeeRecord
	Male    []EmployeeRecord
	Female  []EmployeeRecord
}

// ClusterAssignment is the result of one clustering pass.
type ClusterAssignment struct {
	AgeMedian   float64
	YearsMedian float64
	Partitions  map[Cluster]*ClusterPartition
}

// Size counts every record across the four clusters.
func (a *ClusterAssignment) Size() int {
	n := 0
	for _, p := range a.Partitions {
		n += len(p.All)
	}
	return n
}

// Code generated by hand for the file filter test. DO NOT EDIT.

package filefilter

func deadInGenerated(a, b int) {
	_ = a + b
}

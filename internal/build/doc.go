// Package build drives conan for the tracker project.
//
// The build folder is reconfigured with conan install only when forced, when
// it has no recorded build info, or when the selected profile contains a
// setting the recorded build info lacks. conan build always follows.
package build
